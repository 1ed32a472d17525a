// Package tenant resolves the organization a request acts for from the
// X-Organization header.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"minipm/internal/logging"
	"minipm/internal/store"
	"minipm/internal/types"
)

const (
	// Header names the organization (slug or name) a request acts for.
	Header = "X-Organization"
	// CurrentHeader echoes the resolved organization's slug.
	CurrentHeader = "X-Current-Organization"

	ginKey = "organization"
)

// Resolver looks an organization up by slug, then by name.
type Resolver interface {
	ResolveOrganization(ctx context.Context, ident string) (*types.Organization, error)
}

type ctxKey struct{}

// WithOrganization returns a copy of ctx carrying org.
func WithOrganization(ctx context.Context, org *types.Organization) context.Context {
	return context.WithValue(ctx, ctxKey{}, org)
}

// FromContext returns the organization stored in ctx, or nil.
func FromContext(ctx context.Context) *types.Organization {
	org, _ := ctx.Value(ctxKey{}).(*types.Organization)
	return org
}

// Current returns the organization resolved for a gin request, or nil.
func Current(c *gin.Context) *types.Organization {
	if v, ok := c.Get(ginKey); ok {
		if org, ok := v.(*types.Organization); ok {
			return org
		}
	}
	return FromContext(c.Request.Context())
}

// Middleware resolves the X-Organization header. Requests without the header
// proceed with no organization; an unknown or ambiguous identifier stops the
// request with a JSON error.
func Middleware(r Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := c.GetHeader(Header)
		if ident == "" {
			c.Next()
			return
		}

		org, err := r.ResolveOrganization(c.Request.Context(), ident)
		switch {
		case errors.Is(err, store.ErrNotFound):
			logging.TenantDebug("Unknown organization %q", ident)
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":   "Organization not found",
				"message": fmt.Sprintf("No organization found with identifier: %s", ident),
			})
			return
		case errors.Is(err, store.ErrAmbiguous):
			logging.Get(logging.CategoryTenant).Warn("Ambiguous organization identifier %q", ident)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Multiple organizations found",
				"message": fmt.Sprintf("Multiple organizations found with identifier: %s", ident),
			})
			return
		case err != nil:
			logging.Get(logging.CategoryTenant).Error("Organization lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Organization lookup failed",
			})
			return
		}

		logging.TenantDebug("Request acts for %s", org.Slug)
		c.Set(ginKey, org)
		c.Request = c.Request.WithContext(WithOrganization(c.Request.Context(), org))
		c.Header(CurrentHeader, org.Slug)
		c.Next()
	}
}
