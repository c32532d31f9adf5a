// Package config loads client settings from etp.json.
//
// The file is optional. Environment variables override it, which keeps
// credentials out of the file:
//
//	ETP_URL       endpoint, ws:// or wss://
//	ETP_USER      Basic auth user
//	ETP_PASSWORD  Basic auth password
//
// # Configuration File Structure
//
//	{
//	  "url": "wss://store.example.com/etp",
//	  "user": "reader",
//	  "compressAll": true,
//	  "logLevel": "info",
//	  "timeout": "30s",
//	  "capture": "s3://etp-captures/sessions/",
//	  "metricsAddr": ":9464",
//	  "protocols": [
//	    {"protocol": 3, "role": "store"},
//	    {"protocol": 4, "role": "store"}
//	  ]
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
