// Package config provides configuration parsing for the viewslot tools.
//
// The configuration is stored in viewslot.json. Every field is optional;
// missing fields keep their defaults.
//
// # Configuration File Structure
//
//	{
//	  "animation": {
//	    "enter": {"class": "au-enter", "activeClass": "au-enter-active", "duration": "250ms"},
//	    "leave": {"class": "au-leave", "activeClass": "au-leave-active", "duration": "400ms"}
//	  },
//	  "metrics": {"namespace": "viewslot", "subsystem": "animation"},
//	  "tracing": {"tracerName": "github.com/vango-dev/viewslot"},
//	  "logLevel": "debug",
//	  "inspector": {"host": "localhost", "port": 7070}
//	}
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(configFlag)
//	if err != nil {
//	    return err
//	}
//	animator := animation.NewCSS(animation.WithDurations(cfg.EnterDuration(), cfg.LeaveDuration()))
package config
