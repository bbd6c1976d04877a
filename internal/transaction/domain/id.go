package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTransactionID returns TXN-<unix millis>-<8 uppercase hex chars>.
func NewTransactionID(now time.Time) string {
	random := uuid.New()
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), strings.ToUpper(hex.EncodeToString(random[:4])))
}
