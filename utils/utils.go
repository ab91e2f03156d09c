package utils

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

const inviteCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteCode generates a 6-character class invite code, retrying
// until it does not collide with an existing class.
func GenerateInviteCode(db *gorm.DB) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		code := make([]byte, 6)
		for i := range code {
			code[i] = inviteCodeChars[rng.Intn(len(inviteCodeChars))]
		}

		var count int64
		if err := db.Table("classes").Where("invite_code = ?", string(code)).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return string(code), nil
		}
	}
}
