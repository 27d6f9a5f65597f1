package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/ozank/konak/handlers"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/pkg/cache"
	"github.com/ozank/konak/repository"
)

// RoleMiddleware, rol bazlı yetkilendirme middleware'ı.
// AuthMiddleware.Require'dan SONRA zincire eklenmelidir — context'teki
// kullanıcıya güvenir.
//
// Rol listesi kısa bir TTL ile cache'lenir: admin endpoint'lerine gelen
// her istekte rol JOIN query'si çalıştırmak yerine 30 saniyelik pencere
// içinde bellekteki sonuç kullanılır. Rol ataması nadir bir işlemdir,
// 30 saniyelik gecikme kabul edilebilir.
type RoleMiddleware struct {
	userRepo   repository.UserRepository
	rolesCache *cache.TTLCache[string, []string]
}

// NewRoleMiddleware, constructor.
func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo:   userRepo,
		rolesCache: cache.New[string, []string](30*time.Second, 5*time.Minute),
	}
}

// Require, verilen role sahip olmayan istekleri 403 ile durduran
// middleware döner.
//
//	adminOnly := roleMW.Require("Administrator")
//	mux.Handle("DELETE /api/countries/{id}", authMW.Require(adminOnly(countryHandler.Delete)))
func (m *RoleMiddleware) Require(roleName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := handlers.UserFromContext(r)
			if !ok {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
				return
			}

			roles, ok := m.rolesCache.Get(user.ID)
			if !ok {
				var err error
				roles, err = m.userRepo.GetRoles(r.Context(), user.ID)
				if err != nil {
					pkg.Error(w, err)
					return
				}
				m.rolesCache.Set(user.ID, roles)
			}

			if !slices.Contains(roles, roleName) {
				pkg.Error(w, pkg.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Invalidate, kullanıcının cache'lenmiş rol listesini düşürür.
// Rol atamasından hemen sonra çağrılırsa yeni rol beklemeden etkinleşir.
func (m *RoleMiddleware) Invalidate(userID string) {
	m.rolesCache.Delete(userID)
}
