package dto

// Wire types shared by the client and the gateway.

// DeviceHeader carries the per-device rate limit key.
const DeviceHeader = "x-device-id"

type GoalContext struct {
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

type SessionContext struct {
	Date     string  `json:"date"`
	Duration float64 `json:"duration"`
}

type ChatRequest struct {
	Message  string           `json:"message"`
	Goals    []GoalContext    `json:"goals"`
	Sessions []SessionContext `json:"sessions"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

type AskInput struct {
	Message string
}

type AskOutput struct {
	Message string
}
