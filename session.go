// session.go - per-visitor contact form controllers
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"

	"github.com/NikhilKanaujia/portfolio/internal/contact"
)

const (
	sessionCookie = "contact_session"
	controllerKey = "contactController"
)

var hashingSalt = generateToken()

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("generate salt: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address so logs never carry the raw value (consistent per IP
// within one process).
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// sessions maps a visitor's cookie to their contact form controller. A
// controller lives as long as the visitor keeps touching it within ttl;
// eviction is the "unmount" and drops its state.
type sessions struct {
	cache         *ttlcache.Cache[string, *contact.Controller]
	ttl           time.Duration
	newController func() *contact.Controller
	logger        zerolog.Logger
}

// newSessions holds at most limit controllers; past that the least recently
// used one is dropped.
func newSessions(ttl time.Duration, limit uint64, newController func() *contact.Controller, logger zerolog.Logger) *sessions {
	s := &sessions{
		cache: ttlcache.New(
			ttlcache.WithTTL[string, *contact.Controller](ttl),
			ttlcache.WithCapacity[string, *contact.Controller](limit),
		),
		ttl:           ttl,
		newController: newController,
		logger:        logger.With().Str("component", "sessions").Logger(),
	}
	s.cache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *contact.Controller]) {
		switch reason {
		case ttlcache.EvictionReasonExpired:
			s.logger.Debug().Str("session", item.Key()[:8]).Msg("contact session expired")
		case ttlcache.EvictionReasonCapacityReached:
			s.logger.Debug().Str("session", item.Key()[:8]).Msg("contact session dropped, store full")
		}
	})
	return s
}

// start runs the expiry loop until stop is called.
func (s *sessions) start() { go s.cache.Start() }

func (s *sessions) stop() { s.cache.Stop() }

func (s *sessions) controller(id string) *contact.Controller {
	if item := s.cache.Get(id); item != nil {
		return item.Value()
	}
	item, _ := s.cache.GetOrSet(id, s.newController())
	return item.Value()
}

// lookup returns the controller for id without creating one.
func (s *sessions) lookup(id string) *contact.Controller {
	if item := s.cache.Get(id); item != nil {
		return item.Value()
	}
	return nil
}

func (s *sessions) len() int { return s.cache.Len() }

func sessionID(c *gin.Context) (string, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || uuid.Validate(id) != nil {
		return "", false
	}
	return id, true
}

// existingSession attaches the visitor's controller if they already have
// one. Pages that only display the form use it so that crawlers never
// allocate a controller.
func existingSession(s *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := sessionID(c); ok {
			if ctrl := s.lookup(id); ctrl != nil {
				c.Set(controllerKey, ctrl)
			}
		}
		c.Next()
	}
}

// sessionMiddleware attaches the visitor's controller to the request,
// issuing a session cookie on first contact.
func sessionMiddleware(s *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			id = uuid.NewString()
		}
		// Refresh on every hit so the cookie outlives the server-side entry.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, int(s.ttl.Seconds()), "/", "", c.Request.TLS != nil, true)

		c.Set(controllerKey, s.controller(id))
		c.Next()
	}
}

// controllerFrom returns the request's controller, or nil when the route
// only looked up an existing session and found none.
func controllerFrom(c *gin.Context) *contact.Controller {
	ctrl, _ := c.Get(controllerKey)
	v, _ := ctrl.(*contact.Controller)
	return v
}
