package dto

type InsightResponse struct {
	Insights string `json:"insights"`
}
