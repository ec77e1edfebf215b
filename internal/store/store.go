package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/isha-gupta80/loomaproject2222/internal/config"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

// Store is the directory's storage adapter. It is constructed once at
// startup and picks exactly one of two modes: live (MongoDB) when a
// valid connection string is configured, or an in-process fallback
// dataset otherwise. Services depend on the Collection surface only and
// cannot tell the modes apart.
type Store struct {
	Users      Collection[model.User]
	Sessions   Collection[model.Session]
	Schools    Collection[model.School]
	QRScans    Collection[model.QRScan]
	AccessLogs Collection[model.AccessLog]

	live   bool
	client *mongo.Client
}

func validMongoURI(uri string) bool {
	return strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://")
}

// Open connects to the configured store, or falls back to the in-memory
// dataset when no valid connection string is set.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	if !validMongoURI(cfg.MongoURI) {
		return NewSeededMemory(), nil
	}

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMinPoolSize(cfg.MongoMinPoolSize).
		SetMaxPoolSize(cfg.MongoMaxPoolSize).
		SetServerSelectionTimeout(cfg.MongoServerSelectionTimeout).
		SetSocketTimeout(cfg.MongoSocketTimeout).
		SetConnectTimeout(cfg.MongoConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	return &Store{
		Users:      &mongoCollection[model.User]{coll: db.Collection("users")},
		Sessions:   &mongoCollection[model.Session]{coll: db.Collection("sessions")},
		Schools:    &mongoCollection[model.School]{coll: db.Collection("schools")},
		QRScans:    &mongoCollection[model.QRScan]{coll: db.Collection("qr_scans")},
		AccessLogs: &mongoCollection[model.AccessLog]{coll: db.Collection("access_logs")},
		live:       true,
		client:     client,
	}, nil
}

// NewMemory returns an empty fallback-mode store.
func NewMemory() *Store {
	return newMemory(nil, nil)
}

// NewSeededMemory returns a fallback-mode store whose schools and users
// collections are lazily seeded with the synthetic demo dataset on
// first use.
func NewSeededMemory() *Store {
	return newMemory(seedSchools, seedUsers)
}

func newMemory(schools func() []model.School, users func() []model.User) *Store {
	return &Store{
		Users:      newMemCollection(userFields, users),
		Sessions:   newMemCollection(sessionFields, nil),
		Schools:    newMemCollection(schoolFields, schools),
		QRScans:    newMemCollection(qrScanFields, nil),
		AccessLogs: newMemCollection(accessLogFields, nil),
		live:       false,
	}
}

// IsLive reports whether a backing store is connected. Observability
// only; behavior is identical either way.
func (s *Store) IsLive() bool {
	return s.live
}

// Ping reports store health as a boolean and never propagates an error.
func (s *Store) Ping(ctx context.Context) bool {
	if !s.live {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary()) == nil
}

func (s *Store) Close(ctx context.Context) error {
	if !s.live {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func userFields(u model.User) Fields {
	return Fields{
		Strings: map[string]string{
			"_id":      u.ID,
			"username": u.Username,
			"email":    u.Email,
			"role":     string(u.Role),
		},
		Times: map[string]time.Time{
			"createdAt": u.CreatedAt.Std(),
		},
	}
}

func sessionFields(s model.Session) Fields {
	return Fields{
		Strings: map[string]string{
			"_id":    s.ID,
			"userId": s.UserID,
			"token":  s.Token,
		},
		Times: map[string]time.Time{
			"expiresAt": s.ExpiresAt.Std(),
			"createdAt": s.CreatedAt.Std(),
		},
	}
}

func schoolFields(s model.School) Fields {
	return Fields{
		Strings: map[string]string{
			"_id":                s.ID,
			"name":               s.Name,
			"district":           s.District,
			"province":           s.Province,
			"palika":             s.Palika,
			"contact.headmaster": s.Contact.Headmaster,
			"loomaId":            s.LoomaID,
			"status":             string(s.Status),
		},
		Times: map[string]time.Time{
			"lastSeen":  s.LastSeen.Std(),
			"createdAt": s.CreatedAt.Std(),
			"updatedAt": s.UpdatedAt.Std(),
		},
	}
}

func qrScanFields(s model.QRScan) Fields {
	return Fields{
		Strings: map[string]string{
			"_id":      s.ID,
			"schoolId": s.SchoolID,
			"loomaId":  s.LoomaID,
		},
		Times: map[string]time.Time{
			"timestamp": s.Timestamp.Std(),
		},
	}
}

func accessLogFields(l model.AccessLog) Fields {
	return Fields{
		Strings: map[string]string{
			"_id":      l.ID,
			"schoolId": l.SchoolID,
			"userId":   l.UserID,
		},
		Times: map[string]time.Time{
			"timestamp": l.Timestamp.Std(),
		},
	}
}
