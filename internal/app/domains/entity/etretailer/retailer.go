package etretailer

import "errors"

// 错误定义
var (
	ErrInvalidCode = errors.New("retailer code cannot be empty")
	ErrInvalidName = errors.New("retailer name cannot be empty")
)

// Retailer 零售商实体
type Retailer struct {
	ID              int64  // 零售商ID
	Code            string // 零售商编码（PRM 侧唯一标识）
	Name            string // 名称
	Address         string // 地址
	ContactPhone    string // 联系电话
	TallyLedgerName string // Tally 账本名（可为空）
}

// NewRetailer 创建零售商（工厂方法）
func NewRetailer(id int64, code, name string) (*Retailer, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}
	if name == "" {
		return nil, ErrInvalidName
	}

	return &Retailer{
		ID:   id,
		Code: code,
		Name: name,
	}, nil
}

// LedgerName 返回 Tally 查询用的账本名
// 业务约定：未单独配置账本名时使用零售商编码
func (r *Retailer) LedgerName() string {
	if r.TallyLedgerName != "" {
		return r.TallyLedgerName
	}
	return r.Code
}
