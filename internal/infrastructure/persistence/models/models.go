package models

// All returns every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&SessionModel{},
		&AccountModel{},
		&VerificationModel{},
		&MessageModel{},
	}
}
