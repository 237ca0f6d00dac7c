package adapter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vehicle-status-backend/internal/carconnect"
	"vehicle-status-backend/internal/logging"
	"vehicle-status-backend/internal/metrics"
)

// CommandName is one of the fixed remote commands.
type CommandName string

const (
	CommandLock               CommandName = "lock_vehicle"
	CommandUnlock             CommandName = "unlock_vehicle"
	CommandStartClimatization CommandName = "start_climatization"
	CommandStopClimatization  CommandName = "stop_climatization"
	CommandStartCharging      CommandName = "start_charging"
	CommandStopCharging       CommandName = "stop_charging"
	CommandStartWindowHeating CommandName = "start_window_heating"
	CommandStopWindowHeating  CommandName = "stop_window_heating"
	CommandFlashLights        CommandName = "flash_lights"
	CommandHonkAndFlash       CommandName = "honk_and_flash"
)

// CommandNames lists the supported commands.
var CommandNames = []CommandName{
	CommandLock, CommandUnlock,
	CommandStartClimatization, CommandStopClimatization,
	CommandStartCharging, CommandStopCharging,
	CommandStartWindowHeating, CommandStopWindowHeating,
	CommandFlashLights, CommandHonkAndFlash,
}

// CommandSender delivers a command to the backend.
type CommandSender interface {
	SendCommand(ctx context.Context, vin string, cmd carconnect.Command) error
}

type commandDef struct {
	subsystem string
	name      string
	// capability is used in messages, e.g. "door" or "charging".
	capability string
	// requires gates the command on the vehicle type; nil allows every type.
	requires func(VehicleType) bool
	args     func(Params) (map[string]any, error)
	done     string
}

func fixedAction(action string) func(Params) (map[string]any, error) {
	return func(Params) (map[string]any, error) {
		return map[string]any{"command": action}, nil
	}
}

func climatizationStart(p Params) (map[string]any, error) {
	args := map[string]any{"command": "start"}
	temp, ok, err := p.getNumber(ParamTargetTemperature, false)
	if err != nil {
		return nil, err
	}
	if ok {
		args["target_temperature"] = temp
		args["target_temperature_unit"] = "C"
	}
	return args, nil
}

func honkFlash(action string) func(Params) (map[string]any, error) {
	return func(p Params) (map[string]any, error) {
		args := map[string]any{"command": action}
		duration, ok, err := p.getPositiveInt(ParamDurationSeconds, false, MaxDurationSeconds)
		if err != nil {
			return nil, err
		}
		if ok {
			args["duration"] = duration
		}
		return args, nil
	}
}

func canCharge(t VehicleType) bool { return t.HasElectric() }

var commandTable = map[CommandName]commandDef{
	CommandLock: {
		subsystem: carconnect.SubsystemDoors, name: carconnect.CommandLockUnlock, capability: "door",
		args: fixedAction("lock"), done: "Vehicle locked",
	},
	CommandUnlock: {
		subsystem: carconnect.SubsystemDoors, name: carconnect.CommandLockUnlock, capability: "door",
		args: fixedAction("unlock"), done: "Vehicle unlocked",
	},
	CommandStartClimatization: {
		subsystem: carconnect.SubsystemClimatization, name: carconnect.CommandStartStop, capability: "climatization",
		args: climatizationStart, done: "Climatization started",
	},
	CommandStopClimatization: {
		subsystem: carconnect.SubsystemClimatization, name: carconnect.CommandStartStop, capability: "climatization",
		args: fixedAction("stop"), done: "Climatization stopped",
	},
	CommandStartCharging: {
		subsystem: carconnect.SubsystemCharging, name: carconnect.CommandStartStop, capability: "charging",
		requires: canCharge, args: fixedAction("start"), done: "Charging started",
	},
	CommandStopCharging: {
		subsystem: carconnect.SubsystemCharging, name: carconnect.CommandStartStop, capability: "charging",
		requires: canCharge, args: fixedAction("stop"), done: "Charging stopped",
	},
	CommandStartWindowHeating: {
		subsystem: carconnect.SubsystemWindowHeating, name: carconnect.CommandStartStop, capability: "window heating",
		args: fixedAction("start"), done: "Window heating started",
	},
	CommandStopWindowHeating: {
		subsystem: carconnect.SubsystemWindowHeating, name: carconnect.CommandStartStop, capability: "window heating",
		args: fixedAction("stop"), done: "Window heating stopped",
	},
	CommandFlashLights: {
		subsystem: carconnect.SubsystemControls, name: carconnect.CommandHonkAndFlash, capability: "flash",
		args: honkFlash("flash"), done: "Lights flashed",
	},
	CommandHonkAndFlash: {
		subsystem: carconnect.SubsystemControls, name: carconnect.CommandHonkAndFlash, capability: "honk and flash",
		args: honkFlash("honk-and-flash"), done: "Honked and flashed lights",
	},
}

// Dispatcher executes named commands against vehicles held by a Cache.
type Dispatcher struct {
	cache  *Cache
	sender CommandSender
	log    *zap.Logger
}

// NewDispatcher returns a Dispatcher sending commands through sender.
func NewDispatcher(cache *Cache, sender CommandSender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		cache:  cache,
		sender: sender,
		log:    logging.OrNop(logger).Named("commands"),
	}
}

// Execute runs one command and reports the outcome. It never returns an
// error: every failure, including an unknown vehicle or a backend error, is
// a failed CommandResult. The cache is invalidated afterwards whatever the
// outcome.
func (d *Dispatcher) Execute(ctx context.Context, identifier string, name CommandName, params Params) (result CommandResult) {
	defer d.cache.Invalidate()
	defer func() {
		metrics.Commands.WithLabelValues(string(name), string(result.Code)).Inc()
	}()

	def, ok := commandTable[name]
	if !ok {
		return failure(ResultUnknownCommand, fmt.Sprintf("Unknown command %q", name), nil)
	}
	snap, err := d.cache.Snapshot(ctx)
	if err != nil {
		return failure(ResultUpstreamError, "Could not load vehicles", err)
	}
	vehicle := Resolve(snap.Vehicles, identifier)
	if vehicle == nil {
		return failure(ResultNotFound, fmt.Sprintf("Vehicle %s not found", identifier), nil)
	}
	args, err := def.args(params)
	if err != nil {
		return failure(ResultInvalidParams, fmt.Sprintf("Invalid parameters for %s", name), err)
	}

	if def.requires != nil {
		if vt := ClassifyVehicle(vehicle); !def.requires(vt) {
			return failure(ResultUnsupported,
				fmt.Sprintf("Vehicle %s is a %s vehicle and does not support %s", identifier, vt, def.capability), nil)
		}
	}
	commands, present := vehicle.CommandsFor(def.subsystem)
	if !present {
		return failure(ResultUnsupported, fmt.Sprintf("Vehicle %s does not support %s commands", identifier, def.capability), nil)
	}
	if !commands.Contains(def.name) {
		return failure(ResultUnsupported, fmt.Sprintf("Vehicle %s does not support the %s command", identifier, def.name), nil)
	}

	cmd := carconnect.Command{Subsystem: def.subsystem, Name: def.name, Args: args}
	start := time.Now()
	err = d.sender.SendCommand(ctx, vehicle.VIN, cmd)
	metrics.ObserveUpstream("command", start, err)
	if err != nil {
		d.log.Error("command failed",
			zap.String("vehicle", identifier),
			zap.String("vin", vehicle.VIN),
			zap.String("command", string(name)),
			zap.Error(err))
		return failure(ResultUpstreamError, fmt.Sprintf("Command %s failed", name), err)
	}

	d.log.Info("command acknowledged",
		zap.String("vehicle", identifier),
		zap.String("vin", vehicle.VIN),
		zap.String("command", string(name)),
		zap.Duration("duration", time.Since(start)))
	return CommandResult{Success: true, Code: ResultOK, Message: def.done}
}
