package dto

// Response DTOs

// AnalyticsResponse carries the admin dashboard counters.
type AnalyticsResponse struct {
	TotalUsers            int64 `json:"total_users"`
	TotalDoctors          int64 `json:"total_doctors"`
	TotalPatients         int64 `json:"total_patients"`
	TotalAppointments     int64 `json:"total_appointments"`
	PendingAppointments   int64 `json:"pending_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
	UnreadMessages        int64 `json:"unread_messages"`
}
