package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"

	"dscheirer.com/pblbuttons/board"
	"dscheirer.com/pblbuttons/buttons"
)

// setting names
const (
	sBoard        = "board"
	sKernel       = "kernel"
	sLogFile      = "logFile"
	sLogStdout    = "logStdout"
	sDebug        = "debug_dump"
	sKeySource    = "keySource"
	sEvdevDevice  = "evdevDevice"
	sEvdevGrab    = "evdevGrab"
	sControlAddr  = "controlAddr"
	sControlUser  = "controlUser"
	sControlPass  = "controlSecret"
	sVirtualClock = "virtualClock"
	sClockTick    = "clockTick"
	sRpioPoll     = "rpioPollTime"
	sRpioRepeat   = "rpioRepeatTime"
	sClicks       = "clicks"
	sClickSound   = "clickSound"
	sMirror       = "mirror"
)

// prefixes for the per-button pin objects, e.g. "rpio_back"
const (
	sRpioPrefix   = "rpio_"
	sMirrorPrefix = "mirror_"
)

// pinMap is a physical Raspberry Pi pin attached to a watch button.
type pinMap struct {
	pinNum int
	pullup bool
}

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sBoard] = board.DefaultBoard
	s[sKernel] = ""
	s[sLogFile] = "/var/log/pblbuttons.log"
	s[sLogStdout] = true
	s[sDebug] = false
	s[sKeySource] = "termbox"
	s[sEvdevDevice] = ""
	s[sEvdevGrab] = false
	s[sControlAddr] = ":8080"
	s[sControlUser] = "pblbuttons"
	s[sControlPass] = ""
	s[sVirtualClock] = false
	s[sClockTick], _ = time.ParseDuration("10ms")
	s[sRpioPoll], _ = time.ParseDuration("10ms")
	s[sRpioRepeat], _ = time.ParseDuration("100ms")
	s[sClicks] = false
	s[sClickSound] = ""
	s[sMirror] = false

	// BCM numbering; 25 and 24 are clear of the I2C pins
	s[sRpioPrefix+"back"] = pinMap{pinNum: 25, pullup: true}
	s[sRpioPrefix+"up"] = pinMap{pinNum: 24, pullup: true}
	s[sRpioPrefix+"select"] = pinMap{pinNum: 23, pullup: true}
	s[sRpioPrefix+"down"] = pinMap{pinNum: 22, pullup: true}
	s[sMirrorPrefix+"back"] = pinMap{pinNum: 5}
	s[sMirrorPrefix+"up"] = pinMap{pinNum: 6}
	s[sMirrorPrefix+"select"] = pinMap{pinNum: 13}
	s[sMirrorPrefix+"down"] = pinMap{pinNum: 19}

	return configSettings{settings: s}
}

func parsePinMap(data []byte, k string) (pinMap, error) {
	obj, dataType, _, err := jsonparser.Get(data, k)
	if err != nil {
		return pinMap{}, err
	}
	if dataType != jsonparser.Object {
		return pinMap{}, errors.Errorf("%s: expected an object, got %v", k, dataType)
	}
	var pm pinMap
	pin, err := jsonparser.GetInt(obj, "pin")
	if err != nil {
		return pinMap{}, errors.Wrapf(err, "%s.pin", k)
	}
	pm.pinNum = int(pin)
	// pullup is optional
	if pu, err := jsonparser.GetBoolean(obj, "pullup"); err == nil {
		pm.pullup = pu
	}
	return pm, nil
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var v int64
			v, err = jsonparser.GetInt(data, k)
			if err != nil {
				// try a string, "0x19" and friends
				str, err2 := jsonparser.GetString(data, k)
				if err2 == nil {
					v, err = strconv.ParseInt(str, 0, 64)
				}
			}
			if err == nil {
				s.settings[k] = int(v)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var d time.Duration
				d, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = d
				}
			}
		case string:
			var str string
			str, err = jsonparser.GetString(data, k)
			if err == nil {
				s.settings[k] = str
			}
		case pinMap:
			var pm pinMap
			pm, err = parsePinMap(data, k)
			if err == nil {
				s.settings[k] = pm
			}
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %q", k)
		}
	}
	return nil
}

func initSettings(configFile string) configSettings {
	s := defaultSettings()
	if configFile == "" {
		return s
	}

	// try to open the config file
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		log.Printf("Could not load conf file '%s', using defaults", configFile)
		return s
	}

	log.Printf("Reading configuration from '%s'", configFile)

	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}
	return s
}

func (s *configSettings) Set(key string, val interface{}) {
	s.settings[key] = val
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

// GetPinMap returns the pin for a button under prefix (sRpioPrefix or
// sMirrorPrefix).
func (s *configSettings) GetPinMap(prefix string, b buttons.Button) (pinMap, bool) {
	v, ok := s.settings[prefix+b.String()].(pinMap)
	return v, ok
}

func (s *configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == sControlPass {
			continue
		}
		v := s.settings[k]
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
