package userservice

// Doctor модель врача из UserService
type Doctor struct {
	ID                  int64  `json:"id"`
	FullName            string `json:"full_name"`
	Specialty           string `json:"specialty"`
	IsAcceptingPatients bool   `json:"is_accepting_patients"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
