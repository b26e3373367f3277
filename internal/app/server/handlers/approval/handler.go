package approval

import "github.com/ArpitBagaria/dist-backend/internal/app/services/svapproval"

// ApprovalHandler 订单审批 HTTP 处理器
type ApprovalHandler struct {
	approvalService *svapproval.ApprovalService
}

// NewApprovalHandler 创建审批处理器实例
func NewApprovalHandler(approvalService *svapproval.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
	}
}
