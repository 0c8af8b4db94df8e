package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/viewmodel"
	"github.com/swbase/swb/internal/vmath"
	"github.com/swbase/swb/internal/weapon"
)

// WithDefaults returns loadouts, or the built-in rifle, bolt-action and shotgun set
// when none are configured.
func WithDefaults(loadouts []config.Loadout) []config.Loadout {
	if len(loadouts) > 0 {
		return loadouts
	}
	return []config.Loadout{rifle(), boltAction(), shotgun()}
}

func stockViewModel() viewmodel.Profile {
	vm := viewmodel.DefaultProfile()
	vm.AimFOV = 55
	vm.AimPlayerFOV = 75
	vm.Aim = viewmodel.AngPos{Pos: mgl64.Vec3{-2.6, -1, 1.1}}
	vm.Run = viewmodel.AngPos{
		Angle: vmath.Angles{Pitch: -10, Yaw: 25},
		Pos:   mgl64.Vec3{2, -1.5, -1},
	}
	return vm
}

func rifle() config.Loadout {
	p := weapon.DefaultProfile("ak47")
	p.Primary = weapon.ClipInfo{
		FiringType:           weapon.FiringAuto,
		RPM:                  600,
		ClipSize:             30,
		Bullets:              1,
		Spread:               0.02,
		Damage:               25,
		Force:                1,
		BulletSize:           2,
		ShootAnim:            "shoot",
		ShootEmptyAnim:       "shoot_empty",
		ShootSound:           "ak47.fire",
		DryFireSound:         "weapon.dry",
		MuzzleFlashParticle:  "muzzle_rifle",
		BulletEjectParticle:  "shell_rifle",
		BarrelSmokeParticle:  "barrel_smoke",
		BulletTracerParticle: "tracer_rifle",
		ScreenShake:          weapon.ShakeParams{Length: 0.08, Speed: 20, Size: 0.4, Rotation: 0.3},
	}
	p.BarrelSmoking = true
	p.AutoReload = true
	p.ReloadTime = 2.2
	p.DeployTime = 0.6
	p.ReloadAnim = "reload"
	p.ReloadSound = "ak47.reload"
	p.StartReserve = 90
	return config.Loadout{Weapon: p, ViewModel: stockViewModel()}
}

func boltAction() config.Loadout {
	p := weapon.DefaultProfile("scout")
	p.Primary = weapon.ClipInfo{
		FiringType:           weapon.FiringSemi,
		RPM:                  50,
		ClipSize:             5,
		Bullets:              1,
		Damage:               80,
		Force:                4,
		BulletSize:           1,
		ShootAnim:            "shoot",
		ShootSound:           "scout.fire",
		DryFireSound:         "weapon.dry",
		MuzzleFlashParticle:  "muzzle_sniper",
		BulletEjectParticle:  "shell_sniper",
		BulletTracerParticle: "tracer_sniper",
		ScreenShake:          weapon.ShakeParams{Length: 0.2, Speed: 10, Size: 1, Rotation: 0.5},
	}
	p.BoltBack = weapon.BoltBack{Time: 1.1, EjectDelay: 0.4, Anim: "bolt"}
	p.ReloadTime = 3
	p.DeployTime = 0.8
	p.ReloadAnim = "reload"
	p.ReloadSound = "scout.reload"
	p.StartReserve = 20
	vm := stockViewModel()
	vm.AimFOV = 20
	vm.AimPlayerFOV = 30
	return config.Loadout{Weapon: p, ViewModel: vm}
}

func shotgun() config.Loadout {
	p := weapon.DefaultProfile("nova")
	p.Mechanism = weapon.MechanismShotgun
	p.Primary = weapon.ClipInfo{
		FiringType:          weapon.FiringSemi,
		RPM:                 70,
		ClipSize:            8,
		Bullets:             8,
		Spread:              0.08,
		Damage:              12,
		Force:               1,
		BulletSize:          1,
		Delay:               0.12,
		ShootAnim:           "pump_fire",
		ShootSound:          "nova.fire",
		DryFireSound:        "weapon.dry",
		MuzzleFlashParticle: "muzzle_shotgun",
		BulletEjectParticle: "shell_shotgun",
	}
	p.ShellEjectDelay = 0.35
	p.AutoReload = true
	p.ReloadTime = 2.6
	p.DeployTime = 0.7
	p.ReloadAnim = "reload_shells"
	p.StartReserve = 32
	return config.Loadout{Weapon: p, ViewModel: stockViewModel()}
}
