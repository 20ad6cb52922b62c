package handler

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      int    `json:"pin" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Owner    string `json:"owner"`
}

type transferRequest struct {
	To     string  `json:"to" validate:"required"`
	Amount float64 `json:"amount" validate:"required"`
}

type loanRequest struct {
	Amount float64 `json:"amount" validate:"required"`
}

type closeRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      int    `json:"pin" validate:"required"`
}

type movementsResponse struct {
	Movements []float64 `json:"movements"`
	Sorted    bool      `json:"sorted"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}
