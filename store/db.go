// Package store keeps a log of delivered messages in BoltDB,
// so the same message is not sent twice.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

// Default DB consts
const (
	DefaultTimeout = 1 * time.Second
	DefaultBucket  = "deliveries"
)

// Delivery is the record of one sent message
type Delivery struct {
	ID       string    `json:"id"`
	Channel  string    `json:"channel,omitempty"`
	SentAt   time.Time `json:"sent_at"`
	Response string    `json:"response"`
}

// DeliveryLog is a delivery cache, wraps bolt.DB
type DeliveryLog struct {
	BucketName []byte

	now func() time.Time
	*bolt.DB
}

// Open opens or creates the log at path
func Open(path, bucket string, timeout time.Duration) (*DeliveryLog, error) {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if bucket == "" {
		bucket = DefaultBucket
	}

	// open DB
	boltDB, err := bolt.Open(path, 0600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open DB at %s", path)
	}
	db := &DeliveryLog{BucketName: []byte(bucket), now: time.Now, DB: boltDB}

	// create bucket if needed
	if err = db.newBucket(db.BucketName); err != nil {
		boltDB.Close()
		return nil, errors.Wrapf(err, "unable to create bucket %q", bucket)
	}

	return db, nil
}

// Key returns the key a payload is stored under
func Key(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Record saves the delivery of payload
func (db *DeliveryLog) Record(payload []byte, channel, response string) (Delivery, error) {
	d := Delivery{
		ID:       uuid.New().String(),
		Channel:  channel,
		SentAt:   db.now().UTC(),
		Response: response,
	}
	value, err := json.Marshal(d)
	if err != nil {
		return Delivery{}, errors.Wrap(err, "unable to marshal delivery")
	}

	key := Key(payload)
	if err = db.put(db.BucketName, []byte(key), value); err != nil {
		return Delivery{}, errors.Wrap(err, "unable to put value into DB")
	}
	logrus.WithFields(logrus.Fields{"id": d.ID, "key": key}).Debug("Delivery recorded")
	return d, nil
}

// Lookup returns the delivery of payload, if it was recorded
func (db *DeliveryLog) Lookup(payload []byte) (Delivery, bool, error) {
	dbValue, err := db.get(db.BucketName, []byte(Key(payload)))
	if err != nil {
		return Delivery{}, false, errors.Wrap(err, "unable to get value from DB")
	}
	if dbValue == nil {
		return Delivery{}, false, nil
	}

	var d Delivery
	if err = json.Unmarshal(dbValue, &d); err != nil {
		return Delivery{}, false, errors.Wrap(err, "unable to unmarshal delivery")
	}
	return d, true, nil
}

// Seen checks if the delivery of payload is present in the log
func (db *DeliveryLog) Seen(payload []byte) (bool, error) {
	_, ok, err := db.Lookup(payload)
	return ok, err
}

func (db *DeliveryLog) newBucket(bucketName []byte) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
}

func (db *DeliveryLog) put(bucketName, key, value []byte) error {
	return db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return errors.Errorf("bucket %q not found", bucketName)
		}

		return bucket.Put(key, value)
	})
}

func (db *DeliveryLog) get(bucketName, key []byte) (value []byte, err error) {
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return errors.Errorf("bucket %q not found", bucketName)
		}

		if v := bucket.Get(key); v != nil {
			// copy v into value as v only lives till the end of tx
			value = make([]byte, len(v))
			copy(value, v)
		}

		return nil
	})
	return
}
