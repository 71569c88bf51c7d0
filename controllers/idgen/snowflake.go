// Package idgen membungkus snowflake node untuk ID approval request.
package idgen

import (
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

func Init(nodeID int64) {
	var err error
	node, err = snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}
}

// GenerateID lazily falls back to node 1 so tests and seeders work without Init.
func GenerateID() int64 {
	once.Do(func() {
		if node == nil {
			Init(1)
		}
	})
	return node.Generate().Int64()
}
