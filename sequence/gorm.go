package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// State sequence_states 表的行模型，每个命名空间一行.
type State struct {
	Name      string `gorm:"primaryKey;size:128"`
	NextValue int64  `gorm:"not null"`
}

// TableName 指定表名.
func (State) TableName() string {
	return "sequence_states"
}

// GormStore 基于关系库行锁的存储实现：
// 事务内先以 ON CONFLICT DO NOTHING 播种起始行，
// 再 SELECT ... FOR UPDATE 串行化同名并发调用.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建关系库存储.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate 创建 sequence_states 表.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&State{})
}

// Increment 返回当前值并原子加一，缺失行以 start 播种.
func (s *GormStore) Increment(ctx context.Context, name string, start int64) (int64, error) {
	var current int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := State{Name: name, NextValue: start}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var st State
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&st).Error; err != nil {
			return err
		}

		current = st.NextValue

		return tx.Model(&st).Update("next_value", st.NextValue+1).Error
	})
	if err != nil {
		return 0, fmt.Errorf("gorm increment %q: %w", name, err)
	}

	return current, nil
}
