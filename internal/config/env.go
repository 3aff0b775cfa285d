package config

import "strings"

// envKeyReplacer maps nested keys to env names: store.driver -> ERP_STORE_DRIVER
var envKeyReplacer = strings.NewReplacer(".", "_")
