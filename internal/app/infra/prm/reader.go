package prm

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// PRM IMEI 导出文件的列下标（0 起）
const (
	colImei1          = 0
	colGoodsID        = 2
	colProductName    = 3
	colStatus         = 4
	colActivationTime = 5
	colRetailerCode   = 18
	colRetailerName   = 19
)

// minColumns 期望的最少列数
const minColumns = 20

// Row PRM 文件中的一行（已裁剪清洗）
type Row struct {
	Imei1          string
	GoodsID        string
	ProductName    string
	Status         string
	ActivationTime *time.Time
	RetailerCode   string
	RetailerName   string
}

// activationTimeLayouts 激活时间的候选格式
var activationTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"02-01-2006 15:04:05",
}

// ReadFile 读取 PRM IMEI Excel 文件，返回数据行（跳过表头）
// 列数不足的警告交由调用方根据返回值处理
func ReadFile(path string) ([]Row, bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read excel file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, false, fmt.Errorf("excel file %s has no sheets", path)
	}

	rawRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, false, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rawRows) == 0 {
		return nil, false, nil
	}

	enoughColumns := len(rawRows[0]) >= minColumns

	rows := make([]Row, 0, len(rawRows)-1)
	for _, raw := range rawRows[1:] {
		row := Row{
			Imei1:        cell(raw, colImei1),
			GoodsID:      cell(raw, colGoodsID),
			ProductName:  cell(raw, colProductName),
			Status:       strings.ToLower(cell(raw, colStatus)),
			RetailerCode: cell(raw, colRetailerCode),
			RetailerName: cell(raw, colRetailerName),
		}
		if ts := parseActivationTime(cell(raw, colActivationTime)); ts != nil {
			row.ActivationTime = ts
		}
		rows = append(rows, row)
	}
	return rows, enoughColumns, nil
}

// cell 安全取列并去掉首尾空白
func cell(raw []string, idx int) string {
	if idx >= len(raw) {
		return ""
	}
	return strings.TrimSpace(raw[idx])
}

// parseActivationTime 按候选格式解析激活时间，解析失败时返回 nil
func parseActivationTime(text string) *time.Time {
	if text == "" {
		return nil
	}
	for _, layout := range activationTimeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return &ts
		}
	}
	return nil
}
