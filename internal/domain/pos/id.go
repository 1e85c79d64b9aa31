package pos

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const idSuffixLen = 9

// NewID возвращает локальный идентификатор вида {unixMillis}{случайный суффикс}
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:idSuffixLen]
	return strconv.FormatInt(now.UnixMilli(), 10) + suffix
}

// NewCreditID - идентификатор кредитной транзакции
func NewCreditID(now time.Time) string {
	return "credit_" + NewID(now)
}
