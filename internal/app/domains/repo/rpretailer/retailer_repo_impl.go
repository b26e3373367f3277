package rpretailer

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/entity"
)

// RetailerRepositoryImpl 零售商仓储实现（MySQL）
type RetailerRepositoryImpl struct {
	db *gorm.DB
}

// NewRetailerRepository 创建零售商仓储实例
func NewRetailerRepository(db *gorm.DB) RetailerRepository {
	return &RetailerRepositoryImpl{db: db}
}

// GetByCode 根据编码查询零售商
func (r *RetailerRepositoryImpl) GetByCode(ctx context.Context, code string) (*etretailer.Retailer, error) {
	var po entity.Retailer
	err := r.db.WithContext(ctx).Where("retailer_code = ?", code).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(&po), nil
}

// List 查询全部零售商
func (r *RetailerRepositoryImpl) List(ctx context.Context) ([]*etretailer.Retailer, error) {
	var pos []entity.Retailer
	err := r.db.WithContext(ctx).Order("retailer_code").Find(&pos).Error
	if err != nil {
		return nil, err
	}

	retailers := make([]*etretailer.Retailer, 0, len(pos))
	for i := range pos {
		retailers = append(retailers, toDomain(&pos[i]))
	}
	return retailers, nil
}

// ListCodes 查询全部零售商编码
func (r *RetailerRepositoryImpl) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&entity.Retailer{}).
		Order("retailer_code").
		Pluck("retailer_code", &codes).Error
	return codes, err
}

// ListWithInventory 查询持有库存的零售商
func (r *RetailerRepositoryImpl) ListWithInventory(ctx context.Context) ([]*etretailer.Retailer, error) {
	var pos []entity.Retailer
	err := r.db.WithContext(ctx).
		Distinct("retailers.*").
		Joins("JOIN prm_inventory_snapshot ON prm_inventory_snapshot.retailer_id = retailers.id").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	retailers := make([]*etretailer.Retailer, 0, len(pos))
	for i := range pos {
		retailers = append(retailers, toDomain(&pos[i]))
	}
	return retailers, nil
}

// Upsert 按编码插入或更新零售商名称
func (r *RetailerRepositoryImpl) Upsert(ctx context.Context, code, name string) (*etretailer.Retailer, bool, error) {
	var po entity.Retailer
	err := r.db.WithContext(ctx).Where("retailer_code = ?", code).First(&po).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}

		po = entity.Retailer{RetailerCode: code, Name: name}
		if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
			return nil, false, err
		}
		return toDomain(&po), true, nil
	}

	if po.Name != name {
		po.Name = name
		if err := r.db.WithContext(ctx).Model(&po).Update("name", name).Error; err != nil {
			return nil, false, err
		}
	}
	return toDomain(&po), false, nil
}

// toDomain 转换为领域对象
func toDomain(po *entity.Retailer) *etretailer.Retailer {
	return &etretailer.Retailer{
		ID:              po.ID,
		Code:            po.RetailerCode,
		Name:            po.Name,
		Address:         po.Address,
		ContactPhone:    po.ContactPhone,
		TallyLedgerName: po.TallyLedgerName,
	}
}
