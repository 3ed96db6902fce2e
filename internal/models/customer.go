package models

import (
	"time"

	"gorm.io/gorm"
)

type CustomerType string

const (
	TypeUser          CustomerType = "User"
	TypeCustomer      CustomerType = "Customer"
	TypeAgent         CustomerType = "Agent"
	TypeCustomerAgent CustomerType = "Customer of Selected Agent"
)

// Customer is a party record: a retail customer, an agent, or a
// customer attached to an agent via AgentID.
type Customer struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CustomerName string         `json:"customer_name" gorm:"not null"`
	Address      string         `json:"address"`
	MobileNumber string         `json:"mobile_number"`
	Email        string         `json:"email"`
	District     string         `json:"district"`
	State        string         `json:"state"`
	CustomerType string         `json:"customer_type" gorm:"default:'Customer'"`
	AgentID      *uint          `json:"agent_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
