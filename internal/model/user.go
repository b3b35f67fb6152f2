package model

// UserRecord is the persisted shape of a user. Receipts are not persisted.
type UserRecord struct {
	Name         string          `json:"name"`
	EncryptedPIN *string         `json:"encryptedPIN"`
	Accounts     []AccountRecord `json:"accounts"`
}
