package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/fleet-app/models"
)

// Event types
const (
	EventMachineUpdate     = "machine_update"
	EventMachineDelete     = "machine_delete"
	EventAssignmentUpdate  = "assignment_update"
	EventMaintenanceUpdate = "maintenance_update"
	EventNotificationNew   = "notification_new"
	EventDashboardStats    = "dashboard_stats"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// FleetHub menampung semua client dashboard (admin, manager, staff)
// yang terhubung lewat websocket
type FleetHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var fleetHub = FleetHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	fleetHub.mutex.Lock()
	defer fleetHub.mutex.Unlock()
	fleetHub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	fleetHub.mutex.Lock()
	defer fleetHub.mutex.Unlock()
	delete(fleetHub.clients, conn)
	conn.Close()
}

// BroadcastMachineUpdate -> mesin baru / berubah (termasuk status)
func BroadcastMachineUpdate(machine models.Machine) {
	broadcast(Message{
		Event: EventMachineUpdate,
		Data:  machine,
	})
}

// BroadcastMachineDelete -> mesin dihapus
func BroadcastMachineDelete(machineID uint) {
	broadcast(Message{
		Event: EventMachineDelete,
		Data:  map[string]interface{}{"machine_id": machineID},
	})
}

// BroadcastAssignmentUpdate -> assignment dibuat/dikembalikan/dihapus
func BroadcastAssignmentUpdate(assignment models.MachineAssignment) {
	broadcast(Message{
		Event: EventAssignmentUpdate,
		Data:  assignment,
	})
}

// BroadcastMaintenanceUpdate -> record maintenance berubah
func BroadcastMaintenanceUpdate(record models.MaintenanceRecord) {
	broadcast(Message{
		Event: EventMaintenanceUpdate,
		Data:  record,
	})
}

// BroadcastNotification -> pengingat maintenance due
func BroadcastNotification(notif models.Notification) {
	broadcast(Message{
		Event: EventNotificationNew,
		Data:  notif,
	})
}

// BroadcastDashboardStats -> snapshot statistik dashboard
func BroadcastDashboardStats(data interface{}) {
	broadcast(Message{
		Event: EventDashboardStats,
		Data:  data,
	})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

// broadcast -> fungsi internal untuk mengirim pesan ke semua client
func broadcast(msg Message) {
	fleetHub.mutex.Lock()
	defer fleetHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range fleetHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			conn.Close()
			delete(fleetHub.clients, conn)
		}
	}
}
