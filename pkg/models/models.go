package models

import "time"

type ReportKind string

const (
	ReportKindOnDemand ReportKind = "on_demand"
	ReportKindWeekly   ReportKind = "weekly"
)

// Reading is one blood-pressure measurement. Attribute names match the
// DynamoDB items written by the ingestion function, including "dystole".
type Reading struct {
	ReadingID       string `gorm:"primaryKey" dynamodbav:"reading_id" json:"reading_id"`
	ReadingDatetime string `dynamodbav:"reading_datetime" json:"reading_datetime"`
	Systole         int    `dynamodbav:"systole" json:"systole"`
	Diastole        int    `gorm:"column:dystole" dynamodbav:"dystole" json:"dystole"`
	Timestamp       string `dynamodbav:"timestamp" json:"timestamp"`
}

// ReadingInput is a validated ingestion request, before an id is assigned.
type ReadingInput struct {
	ReadingDatetime string
	Systole         int
	Diastole        int
}

type StorageLocation struct {
	Bucket string `json:"s3_bucket"`
	Key    string `json:"s3_key"`
}

type Report struct {
	Kind        ReportKind
	Name        string
	GeneratedAt time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Count       int
	Content     string
	Location    StorageLocation
}
