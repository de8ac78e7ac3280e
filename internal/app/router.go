// internal/app/router.go
package app

import (
	campaignHandler "tripdesk-service/internal/handlers/campaign"
	clientHandler "tripdesk-service/internal/handlers/client"
	employeeHandler "tripdesk-service/internal/handlers/employee"
	opportunityHandler "tripdesk-service/internal/handlers/opportunity"
	proposalHandler "tripdesk-service/internal/handlers/proposal"
	supplierHandler "tripdesk-service/internal/handlers/supplier"
	uploadHandler "tripdesk-service/internal/handlers/upload"
	"tripdesk-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	OpportunityHandler *opportunityHandler.OpportunityHandler
	ProposalHandler    *proposalHandler.ProposalHandler
	ClientHandler      *clientHandler.ClientHandler
	EmployeeHandler    *employeeHandler.EmployeeHandler
	SupplierHandler    *supplierHandler.SupplierHandler
	CampaignHandler    *campaignHandler.CampaignHandler
	UploadHandler      *uploadHandler.UploadHandler
	Hub                *ws.Hub
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", func(c *gin.Context) {
		ws.ServeWS(h.Hub, c.Writer, c.Request, logger)
	})

	// ==================== Opportunities ====================
	opportunities := api.Group("/opportunities")
	{
		opportunities.POST("", h.OpportunityHandler.CreateOpportunity)
		opportunities.GET("", h.OpportunityHandler.ListOpportunities)
		opportunities.GET("/:id", h.OpportunityHandler.GetOpportunity)
		opportunities.PATCH("/:id", h.OpportunityHandler.UpdateOpportunity)
		opportunities.POST("/:id/move-stage", h.OpportunityHandler.MoveStage)
		opportunities.GET("/:id/requirements", h.OpportunityHandler.CheckRequirements)
		opportunities.PUT("/:id/milestones", h.OpportunityHandler.UpsertMilestone)
		opportunities.PUT("/:id/tasks/:taskId/done", h.OpportunityHandler.SetTaskDone)
		opportunities.POST("/:id/drafts", h.OpportunityHandler.GenerateDraft)

		// Proposal workflow
		opportunities.POST("/:id/proposals/generate", h.ProposalHandler.GenerateProposals)
		opportunities.POST("/:id/proposals/:optionId/accept", h.ProposalHandler.AcceptOption)
		opportunities.POST("/:id/proposals/components", h.ProposalHandler.AddComponent)
		opportunities.DELETE("/:id/proposals/:optionId/components/:componentId", h.ProposalHandler.RemoveComponent)
	}

	// ==================== Clients ====================
	clients := api.Group("/clients")
	{
		clients.POST("", h.ClientHandler.CreateClient)
		clients.GET("", h.ClientHandler.ListClients)
		clients.GET("/:id", h.ClientHandler.GetClient)
		clients.PATCH("/:id", h.ClientHandler.UpdateClient)
	}

	// ==================== Employees ====================
	employees := api.Group("/employees")
	{
		employees.POST("", h.EmployeeHandler.CreateEmployee)
		employees.GET("", h.EmployeeHandler.ListEmployees)
		employees.GET("/:id", h.EmployeeHandler.GetEmployee)
		employees.PATCH("/:id", h.EmployeeHandler.UpdateEmployee)
	}

	// ==================== Suppliers ====================
	suppliers := api.Group("/suppliers")
	{
		suppliers.POST("", h.SupplierHandler.CreateSupplier)
		suppliers.GET("", h.SupplierHandler.ListSuppliers)
		suppliers.GET("/:id", h.SupplierHandler.GetSupplier)
		suppliers.PATCH("/:id", h.SupplierHandler.UpdateSupplier)
	}

	// ==================== Campaigns ====================
	campaigns := api.Group("/campaigns")
	{
		campaigns.POST("", h.CampaignHandler.CreateCampaign)
		campaigns.GET("", h.CampaignHandler.ListCampaigns)
		campaigns.GET("/:id", h.CampaignHandler.GetCampaign)
		campaigns.PATCH("/:id", h.CampaignHandler.UpdateCampaign)
		campaigns.POST("/:id/leads", h.CampaignHandler.RegisterLead)
	}

	// ==================== Uploads ====================
	api.POST("/uploads", h.UploadHandler.Upload)
}
