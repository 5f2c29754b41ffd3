package models

import "time"

// Transaction là một bút toán bất biến trên folio. Sửa sai bằng cách
// ghi bút toán đảo (ReversalOf), không bao giờ sửa hay xóa bút toán cũ.
type Transaction struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	FolioID     string    `json:"folioId" gorm:"index"`
	Sequence    int64     `json:"sequence"` // thứ tự ghi sổ, tăng dần theo từng folio
	Amount      int64     `json:"amount"`   // đơn vị nhỏ nhất (cent), có dấu
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ExternalRef string    `json:"externalRef,omitempty"`
	ReversalOf  string    `json:"reversalOf,omitempty"`
	PostedAt    time.Time `json:"postedAt"`
	PostedBy    string    `json:"postedBy,omitempty"`
}

// IsCharge cho biết bút toán là khoản ghi nợ (dương) hay ghi có
func (t *Transaction) IsCharge() bool {
	return t.Amount > 0
}
