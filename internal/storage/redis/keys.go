package redis

import (
	"fmt"

	"github.com/ctfarena/ctfarena/internal/model"
)

// Key prefix for all platform data
const keyPrefix = "ctfarena"

// Key generation functions for each entity type

// accountKey returns the Redis key for an Account
func accountKey(id model.UserID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// accountsIndexKey returns the Redis key for the SET of all account keys
func accountsIndexKey() string {
	return fmt.Sprintf("%s:idx:accounts", keyPrefix)
}

// challengeKey returns the Redis key for a Challenge
func challengeKey(id model.ChallengeID) string {
	return fmt.Sprintf("%s:challenge:%s", keyPrefix, id)
}

// challengesIndexKey returns the Redis key for the SET of all challenge keys
func challengesIndexKey() string {
	return fmt.Sprintf("%s:idx:challenges", keyPrefix)
}

// adKey returns the Redis key for an Ad
func adKey(id model.AdID) string {
	return fmt.Sprintf("%s:ad:%s", keyPrefix, id)
}

// adsIndexKey returns the Redis key for the SET of all ad keys
func adsIndexKey() string {
	return fmt.Sprintf("%s:idx:ads", keyPrefix)
}

// visitsKey returns the Redis key for the LIST of page visits
func visitsKey() string {
	return fmt.Sprintf("%s:visits", keyPrefix)
}
