package dto

// SellerClose totales de cierre por vendedor. Total en centavos.
type SellerClose struct {
	SellerID   string `json:"sellerId"`
	SellerName string `json:"sellerName"`
	SalesCount int    `json:"salesCount"`
	Total      int64  `json:"total"`
}

// DailyCloseReport respuesta de GET /reports/daily-close: cierre diario de
// una franquicia, desglosado por vendedor.
type DailyCloseReport struct {
	FranchiseID    string        `json:"franchiseId"`
	FranchiseName  string        `json:"franchiseName"`
	Date           string        `json:"date"`
	SalesCount     int           `json:"salesCount"`
	CancelledCount int           `json:"cancelledCount"`
	Total          int64         `json:"total"`
	BySeller       []SellerClose `json:"bySeller"`
}

// FranchiseSummary totales globales de una franquicia.
type FranchiseSummary struct {
	FranchiseID   string `json:"franchiseId"`
	FranchiseName string `json:"franchiseName"`
	SalesCount    int    `json:"salesCount"`
	Total         int64  `json:"total"`
}

// GlobalSummary respuesta de GET /reports/global/summary (solo roles
// globales; el backend rechaza con 403 a los demás).
type GlobalSummary struct {
	SalesCount    int                `json:"salesCount"`
	Total         int64              `json:"total"`
	ByFranchise   []FranchiseSummary `json:"byFranchise"`
	GeneratedAtMs int64              `json:"generatedAtMs"`
}

// AuditQuery filtros de GET /audit.
type AuditQuery struct {
	FranchiseID string
	EntityType  string
	Limit       int
}
