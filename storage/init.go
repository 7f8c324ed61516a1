package storage

import (
	"OnShift/storage/database"
	"OnShift/storage/mq"
	"OnShift/storage/redis"
)

// Init brings up the whole storage layer.
func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	return nil
}
