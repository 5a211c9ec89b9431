package model

// Service is a registered backend fronted by the gateway. Code is the
// identity used in permission tuples; both code and name are unique.
type Service struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Code        string `gorm:"column:service_code;uniqueIndex" json:"code"`
	Name        string `gorm:"column:service_name;uniqueIndex" json:"name"`
	Description string `gorm:"column:service_description" json:"description,omitempty"`
	Lifecycle
}

func (Service) TableName() string {
	return "service_master"
}
