package db

import (
	"github.com/terraincognita07/moments/internal/kv"
	"gorm.io/gorm"
)

type Repositories struct {
	Durable *KVRepository
}

func NewRepositories(database *gorm.DB, quotaBytes int64) *Repositories {
	if quotaBytes == 0 {
		quotaBytes = kv.DefaultQuotaBytes
	}
	return &Repositories{
		Durable: NewKVRepository(database, quotaBytes),
	}
}
