package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/order_guard/pkg/metrics"
)

// evictLRU удаляет наименее используемый элемент.
func (c *StockCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.StockCacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement удаляет элемент из списка и индекса.
func (c *StockCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.productID)
	}
	c.ll.Remove(elem)
}

func (c *StockCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *StockCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack удаляет истёкшие элементы из хвоста до первого актуального.
func (c *StockCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent, ok := back.Value.(*entry)
		if !ok || now.After(ent.expiresAt) {
			c.removeElement(back)
			metrics.StockCacheOps.WithLabelValues("expired").Inc()
			continue
		}
		return
	}
}
