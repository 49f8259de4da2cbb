package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/alfianmal/vidshare/models"
	"gorm.io/gorm"
)

const embedTokenLength = 9

// Alphabet without lookalike characters (0/O, 1/l/I).
const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// GenerateEmbedToken returns a short public token for embedding a video,
// retrying until it does not collide with an existing one.
func GenerateEmbedToken(tx *gorm.DB) (string, error) {
	for {
		b := make([]byte, embedTokenLength)
		for i := range b {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenAlphabet))))
			if err != nil {
				return "", err
			}
			b[i] = tokenAlphabet[n.Int64()]
		}
		token := string(b)

		var video models.Video
		err := tx.Where("embed_token = ?", token).First(&video).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return token, nil
			}
			return "", err
		}
	}
}
