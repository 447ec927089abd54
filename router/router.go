package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/fleet-app/controllers"
	"github.com/yeremiapane/fleet-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	projectCtrl := controllers.NewProjectController(db)
	supplierCtrl := controllers.NewSupplierController(db)
	machineCtrl := controllers.NewMachineController(db)
	assignmentCtrl := controllers.NewAssignmentController(db)
	maintenanceCtrl := controllers.NewMaintenanceController(db)
	statsCtrl := controllers.NewStatsController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)
	reportCtrl := controllers.NewReportController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.EventsHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	// USER (admin/manager/staff)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// PROJECTS
	auth.GET("/projects", projectCtrl.GetAllProjects)
	auth.POST("/projects", projectCtrl.CreateProject)
	auth.GET("/projects/:project_id", projectCtrl.GetProjectByID)
	auth.PUT("/projects/:project_id", projectCtrl.UpdateProject)
	auth.DELETE("/projects/:project_id", projectCtrl.DeleteProject)

	// SUPPLIERS
	auth.GET("/suppliers", supplierCtrl.GetAllSuppliers)
	auth.POST("/suppliers", supplierCtrl.CreateSupplier)
	auth.GET("/suppliers/:supplier_id", supplierCtrl.GetSupplierByID)
	auth.PUT("/suppliers/:supplier_id", supplierCtrl.UpdateSupplier)
	auth.DELETE("/suppliers/:supplier_id", supplierCtrl.DeleteSupplier)

	// MACHINES
	auth.GET("/machines", machineCtrl.GetAllMachines)
	auth.GET("/machines/by-status", machineCtrl.FindMachinesByStatus)
	auth.POST("/machines", machineCtrl.CreateMachine)
	auth.GET("/machines/:machine_id", machineCtrl.GetMachineByID)
	auth.PUT("/machines/:machine_id", machineCtrl.UpdateMachine)
	auth.DELETE("/machines/:machine_id", machineCtrl.DeleteMachine)

	// ASSIGNMENTS
	auth.GET("/assignments", assignmentCtrl.GetAllAssignments)
	auth.GET("/assignments/active", assignmentCtrl.GetActiveAssignments)
	auth.POST("/assignments", assignmentCtrl.CreateAssignment)
	auth.PUT("/assignments/:assignment_id/return", assignmentCtrl.ReturnAssignment)
	auth.DELETE("/assignments/:assignment_id", assignmentCtrl.DeleteAssignment)

	// MAINTENANCE RECORDS
	auth.GET("/maintenance", maintenanceCtrl.GetAllMaintenanceRecords)
	auth.POST("/maintenance", maintenanceCtrl.CreateMaintenanceRecord)
	auth.GET("/maintenance/:record_id", maintenanceCtrl.GetMaintenanceRecordByID)
	auth.PUT("/maintenance/:record_id", maintenanceCtrl.UpdateMaintenanceRecord)
	auth.DELETE("/maintenance/:record_id", maintenanceCtrl.DeleteMaintenanceRecord)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.POST("/notifications", notificationCtrl.CreateNotification)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// STATS (untuk chart di dashboard)
	auth.GET("/stats/maintenance-by-month", statsCtrl.MaintenanceByMonth)
	auth.GET("/stats/assignments-by-month", statsCtrl.AssignmentsByMonth)
	auth.GET("/stats/machines-by-category", statsCtrl.MachinesByCategory)
	auth.GET("/stats/machines-by-status", statsCtrl.MachinesByStatus)
	auth.GET("/stats/machines-by-project", statsCtrl.MachinesByProject)
	auth.GET("/stats/top-machines", statsCtrl.TopMachines)
	auth.GET("/stats/maintenance-cost-by-type", statsCtrl.MaintenanceCostByType)

	// Routes untuk Admin
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	// Export hanya untuk manager ke atas
	reports := auth.Group("/reports")
	reports.Use(middlewares.RequireRole("manager"))
	{
		reports.GET("/export", reportCtrl.ExportData)
		reports.GET("/export-pdf", reportCtrl.ExportPDF)
	}

	return r
}
