package utils

import (
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
)

var bboxListPool = sync.Pool{
	New: func() any {
		s := make([]cube.BBox, 0, 32)
		return &s
	},
}

// GetBBoxList retrieves an empty BBox slice from the pool.
func GetBBoxList() *[]cube.BBox {
	list := bboxListPool.Get().(*[]cube.BBox)
	*list = (*list)[:0]
	return list
}

// PutBBoxList returns a BBox slice to the pool. The slice must not be used afterwards.
func PutBBoxList(list *[]cube.BBox) {
	if list == nil {
		return
	}
	*list = (*list)[:0]
	bboxListPool.Put(list)
}
