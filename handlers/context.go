package handlers

import (
	"net/http"

	"github.com/ozank/konak/models"
)

// contextKey, context'te kullanıcı bilgisi taşımak için kullanılan key tipi.
//
// Go'da context.Value() any tip kabul eder — string key kullanmak çakışmaya
// neden olabilir. Özel bir tip tanımlayarak namespace collision'ı önleriz.
type contextKey string

// UserContextKey, auth middleware'ın doğrulanmış kullanıcıyı koyduğu key.
const UserContextKey contextKey = "user"

// UserFromContext, auth middleware'ın context'e koyduğu kullanıcıyı okur.
// Middleware'dan geçmemiş bir istekte (false) döner.
func UserFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}
