package model

import "time"

// RequestLog records one handled HTTP request. Written out-of-band by the
// request logging middleware; not lifecycle-governed.
type RequestLog struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID         *uint     `gorm:"column:user_id" json:"user_id,omitempty"`
	IPAddress      string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent      string    `gorm:"column:user_agent" json:"user_agent"`
	Path           string    `gorm:"column:path" json:"path"`
	QueryString    string    `gorm:"column:query_string" json:"query_string"`
	Method         string    `gorm:"column:method" json:"method"`
	ResponseStatus int       `gorm:"column:response_status" json:"response_status"`
	Timestamp      time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

func (RequestLog) TableName() string {
	return "activity_log"
}
