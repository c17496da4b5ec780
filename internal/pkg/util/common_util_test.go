package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "无标签",
			content: "just a plain post",
			want:    nil,
		},
		{
			name:    "单个标签",
			content: "hello #golang world",
			want:    []string{"golang"},
		},
		{
			name:    "多个标签去重",
			content: "#golang is fun #gin #golang",
			want:    []string{"golang", "gin"},
		},
		{
			name:    "剥离尾部标点",
			content: "love #golang! and #gin.",
			want:    []string{"golang", "gin"},
		},
		{
			name:    "中文标签与中文标点",
			content: "今天聊聊 #微服务， 还有 #分布式。",
			want:    []string{"微服务", "分布式"},
		},
		{
			name:    "纯井号不算标签",
			content: "what is # and ## anyway",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.content))
		})
	}
}
