package response

import "github.com/ArpitBagaria/dist-backend/internal/app/services/svapproval"

// DecisionResponse 订单审批结果
type DecisionResponse struct {
	Decision            string   `json:"decision"`
	RiskScore           float64  `json:"risk_score"`
	OrderValue          float64  `json:"order_value"`
	ODAmount            float64  `json:"od_amount"`
	RecentSales30dValue float64  `json:"recent_sales_30d_value"`
	RulesTriggered      []string `json:"rules_triggered"`
}

// FromDecisionPayload 转换审批结果
func FromDecisionPayload(payload *svapproval.DecisionPayload) *DecisionResponse {
	return &DecisionResponse{
		Decision:            string(payload.Decision),
		RiskScore:           payload.RiskScore,
		OrderValue:          payload.OrderValue,
		ODAmount:            payload.ODAmount,
		RecentSales30dValue: payload.RecentSales30dValue,
		RulesTriggered:      payload.RulesTriggered,
	}
}
