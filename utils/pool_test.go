package utils

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
)

func TestBBoxListPoolReset(t *testing.T) {
	list := GetBBoxList()
	*list = append(*list, cube.Box(0, 0, 0, 1, 1, 1), cube.Box(1, 0, 0, 2, 1, 1))
	PutBBoxList(list)

	again := GetBBoxList()
	defer PutBBoxList(again)
	if len(*again) != 0 {
		t.Fatalf("expected an empty list from the pool, got %d boxes", len(*again))
	}
	PutBBoxList(nil)
}
