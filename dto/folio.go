package dto

type OpenFolioRequest struct {
	ConfirmationNumber string `json:"confirmationNumber" binding:"required"`
}

type PostChargeRequest struct {
	FolioID     string `json:"folioId" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"` // đơn vị nhỏ nhất, phải dương
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	ExternalRef string `json:"externalRef"`
	PostedBy    string `json:"postedBy"`
}

type PostPaymentRequest struct {
	FolioID     string `json:"folioId" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"` // đơn vị nhỏ nhất, phải âm
	Category    string `json:"category"`
	Description string `json:"description"`
	ExternalRef string `json:"externalRef"`
	PostedBy    string `json:"postedBy"`
}

type ReverseRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
}

type CloseFolioRequest struct {
	FolioID string `json:"folioId" binding:"required"`
}

// PostingResponse là kết quả một lần ghi sổ
type PostingResponse struct {
	TransactionID string `json:"transactionId"`
	Sequence      int64  `json:"sequence"`
	Balance       int64  `json:"balance"` // số dư sau bút toán
}
