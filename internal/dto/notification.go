package dto

type CreateNotificationRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
