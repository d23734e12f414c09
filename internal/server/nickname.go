package server

import (
	"math/rand"
)

// 昵称词库
var (
	adjectives = []string{
		"勇敢的", "沉稳的", "机智的", "冷酷的", "敏捷的",
		"潜行的", "凶猛的", "精准的", "无畏的", "狡猾的",
		"闪电的", "铁血的", "幽灵的", "暴躁的", "淡定的",
	}

	nouns = []string{
		"猎鹰", "毒蛇", "野狼", "猎豹", "黑熊",
		"秃鹫", "眼镜蛇", "猛虎", "灰狐", "獾",
		"夜枭", "蝎子", "猎犬", "白鲨", "游隼",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return adj + noun
}
