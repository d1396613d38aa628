package config

import (
	"os"
	"sync"
)

type CRMConfig struct {
	BaseURL  string
	APIToken string
}

var (
	crmConfig *CRMConfig
	crmOnce   sync.Once
)

func LoadCRMConfig() *CRMConfig {
	crmOnce.Do(func() {
		crmConfig = &CRMConfig{
			BaseURL:  os.Getenv("CRM_BASE_URL"),
			APIToken: os.Getenv("CRM_API_TOKEN"),
		}
	})
	return crmConfig
}
