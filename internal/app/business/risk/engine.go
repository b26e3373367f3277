package risk

import "fmt"

// Decision 审批决策
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionHold    Decision = "HOLD"
	DecisionReject  Decision = "REJECT"
)

// Assessment 风险评估结果
// Reasons 按固定顺序生成（OD 分段 → 销量比例 → 绝对金额 → 安全规则），用于审计回放
type Assessment struct {
	Decision  Decision
	RiskScore float64
	Reasons   []string
}

// 决策阈值：risk ≤ 30 放行，30 < risk ≤ 60 人工介入，risk > 60 拒绝
const (
	approveMaxRisk = 30.0
	holdMaxRisk    = 60.0
)

// 小额安全规则：订单 ≤ 20k 且 OD ≤ 10k 时无条件放行（只改写决策，不跳过打分）
const (
	safetyMaxOrderValue = 20_000.0
	safetyMaxODAmount   = 10_000.0
)

// band 分段规则：金额落在 (前一档, upper] 区间时加 delta 分
// label 用于审计文案，与 delta 同源维护
type band struct {
	upper float64
	delta float64
	label string
}

// odBands OD 欠款分段表（od ≤ 0 不加分，超出最高档加 odTopDelta）
var odBands = []band{
	{upper: 25_000, delta: 20, label: "0–25k"},
	{upper: 50_000, delta: 35, label: "25k–50k"},
	{upper: 100_000, delta: 55, label: "50k–100k"},
}

const odTopDelta = 75.0

// ratioBands 订单金额 / 近 30 天销量比例分段表（超出最高档加 ratioTopDelta）
var ratioBands = []band{
	{upper: 0.5, delta: 0},
	{upper: 1.0, delta: 5},
	{upper: 1.5, delta: 10},
	{upper: 2.0, delta: 20},
}

const ratioTopDelta = 30.0

// 绝对订单金额规则（1L = 100k，2L = 200k）
const (
	largeOrderValue  = 100_000.0
	largeOrderDelta  = 10.0
	xlargeOrderValue = 200_000.0
	xlargeOrderDelta = 20.0
)

// Decide 计算风险分并映射为审批决策
// 纯函数：仅依赖三个入参，可并发调用
// 注意：orderValue / recentSales30dValue 由调用方保证非负；odAmount 允许为负（零售商有结余）
func Decide(orderValue, odAmount, recentSales30dValue float64) Assessment {
	risk := 0.0
	reasons := make([]string, 0, 4)

	// A. OD 欠款分段
	delta, reason := scoreOD(odAmount)
	risk += delta
	reasons = append(reasons, reason)

	// B. 订单金额 vs 近 30 天销量
	delta, reason = scoreSalesRatio(orderValue, recentSales30dValue)
	risk += delta
	reasons = append(reasons, reason)

	// C. 绝对订单金额（不超过 1L 时不产生审计行）
	delta, reason = scoreOrderSize(orderValue)
	risk += delta
	if reason != "" {
		reasons = append(reasons, reason)
	}

	// 1) 小额安全规则优先
	if orderValue <= safetyMaxOrderValue && odAmount <= safetyMaxODAmount {
		reasons = append(reasons, "Small order (≤20k) and OD ≤10k → auto-approve safety rule.")
		return Assessment{Decision: DecisionApprove, RiskScore: risk, Reasons: reasons}
	}

	// 2) 阈值决策
	decision := DecisionReject
	if risk <= approveMaxRisk {
		decision = DecisionApprove
	} else if risk <= holdMaxRisk {
		decision = DecisionHold
	}

	return Assessment{Decision: decision, RiskScore: risk, Reasons: reasons}
}

// scoreOD OD 欠款分段打分
func scoreOD(odAmount float64) (float64, string) {
	if odAmount <= 0 {
		return 0, fmt.Sprintf("OD %.0f ≤ 0 → +0 risk", odAmount)
	}
	for _, b := range odBands {
		if odAmount <= b.upper {
			return b.delta, fmt.Sprintf("OD ₹%.0f in %s band → +%.0f risk", odAmount, b.label, b.delta)
		}
	}
	return odTopDelta, fmt.Sprintf("OD ₹%.0f > 100k → +%.0f risk", odAmount, odTopDelta)
}

// scoreSalesRatio 订单金额与近 30 天销量比例打分
func scoreSalesRatio(orderValue, recentSales30dValue float64) (float64, string) {
	// 销量下限 1.0，避免除零
	salesBase := recentSales30dValue
	if salesBase < 1.0 {
		salesBase = 1.0
	}
	ratio := orderValue / salesBase

	delta := ratioTopDelta
	for _, b := range ratioBands {
		if ratio <= b.upper {
			delta = b.delta
			break
		}
	}
	return delta, fmt.Sprintf("Order is %.2fx of last 30d sales → +%.0f risk", ratio, delta)
}

// scoreOrderSize 绝对订单金额打分
func scoreOrderSize(orderValue float64) (float64, string) {
	if orderValue > xlargeOrderValue {
		return xlargeOrderDelta, fmt.Sprintf("Order value ₹%.0f > 2L → +%.0f risk", orderValue, xlargeOrderDelta)
	}
	if orderValue > largeOrderValue {
		return largeOrderDelta, fmt.Sprintf("Order value ₹%.0f > 1L → +%.0f risk", orderValue, largeOrderDelta)
	}
	return 0, ""
}
