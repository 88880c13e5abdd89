package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	GroupKeyPrefix = "group:%s"
)

// GroupTTL bounds how long a group lookup stays cached. Groups only change
// through the admin surface and the seeder, so a long window is safe.
const GroupTTL = 10 * time.Minute

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

// InvalidateGroup drops the cached lookup for a group slug, best-effort.
func InvalidateGroup(ctx context.Context, slug string) {
	_ = Delete(ctx, GroupKey(slug))
}
