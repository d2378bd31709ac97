package config

import (
	_ "embed"
	_ "time/tzdata" // 容器镜像中可能缺少时区数据
)

// DefaultConfigYAML 内置默认配置
//
//go:embed default.yaml
var DefaultConfigYAML []byte
