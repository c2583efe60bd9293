package types

import (
	"encoding/json"
	"time"
)

type AlertCreated struct {
	Alert     Alert     `json:"alert"`
	Count     int64     `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *AlertCreated) ContentType() string {
	return "application/json"
}
func (a *AlertCreated) TopicName() string {
	return "hubwatch.alertCreated"
}
func (a *AlertCreated) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
