package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/skip2/go-qrcode"

	"summit-ticketing/internal/models"
)

// Generator produces encrypted check-in passes for completed orders. The
// payload is AES-CFB encrypted so a scanned pass can only be read by the
// check-in desk holding the same secret.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

type passPayload struct {
	OrderID   int64  `json:"order_id"`
	Name      string `json:"name"`
	Package   string `json:"package"`
	PaymentID string `json:"payment_id"`
}

func (g *Generator) GeneratePass(order models.Order) ([]byte, error) {
	data, err := json.Marshal(passPayload{
		OrderID:   order.ID,
		Name:      order.Name,
		Package:   order.Package,
		PaymentID: order.PaymentID,
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
