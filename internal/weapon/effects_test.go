package weapon_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/mock/gomock"

	"github.com/swbase/swb/internal/weapon"
	"github.com/swbase/swb/internal/weapon/mocks"
)

func newViewer(t *testing.T, p weapon.Profile, firstPerson bool) (*weapon.Controller, *weapon.Weapon, *mocks.MockEffects, *mocks.MockPhysics) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fx := mocks.NewMockEffects(ctrl)
	phys := mocks.NewMockPhysics(ctrl)

	c := weapon.NewController(weapon.Dependencies{
		Realm:   weapon.RealmClient,
		Effects: fx,
		Physics: phys,
	})
	owner := newOwner("viewer")
	owner.local = true
	owner.firstPerson = firstPerson
	w := weapon.New(p)
	w.Equip(owner)
	return c, w, fx, phys
}

func TestShootEffects_SkipsEmptyNames(t *testing.T) {
	c, w, fx, _ := newViewer(t, rifle(), true)
	fx.EXPECT().PlayParticle("shell.eject", weapon.TargetViewModel, "ejection_point").Times(1)

	c.ShootEffects(w, "", "shell.eject", "")
	c.ShootEffects(w, "", "", "")
}

func TestShootEffects_ViewModelInFirstPerson(t *testing.T) {
	c, w, fx, _ := newViewer(t, rifle(), true)
	gomock.InOrder(
		fx.EXPECT().PlayParticle("muzzle.flash", weapon.TargetViewModel, "muzzle"),
		fx.EXPECT().PlayParticle("shell.eject", weapon.TargetViewModel, "ejection_point"),
		fx.EXPECT().PlayAnim(weapon.TargetViewModel, "fire"),
	)

	c.ShootEffects(w, "muzzle.flash", "shell.eject", "fire")
}

func TestShootEffects_WorldModelInThirdPerson(t *testing.T) {
	c, w, fx, _ := newViewer(t, rifle(), false)
	fx.EXPECT().PlayParticle("muzzle.flash", weapon.TargetWorldModel, "muzzle")

	c.ShootEffects(w, "muzzle.flash", "", "")
}

func TestMuzzleEffectData_Attachment(t *testing.T) {
	p := rifle()
	p.Muzzle = &weapon.Attachment{Name: "silencer", EffectAttachment: "muzzle_silencer"}

	c, w, fx, _ := newViewer(t, p, true)
	fx.EXPECT().PlayParticle("muzzle.flash", weapon.TargetViewAttachment, "muzzle_silencer")
	c.ShootEffects(w, "muzzle.flash", "", "")

	c, w, fx, _ = newViewer(t, p, false)
	fx.EXPECT().PlayParticle("muzzle.flash", weapon.TargetWorldAttachment, "muzzle_silencer")
	c.ShootEffects(w, "muzzle.flash", "", "")
}

func TestShootClientBullet_ImpactAndTracer(t *testing.T) {
	p := rifle()
	p.Primary.BulletTracerParticle = "tracer"
	c, w, fx, phys := newViewer(t, p, true)

	end := mgl64.Vec3{500, 0, 0}
	phys.EXPECT().IsPointWater(gomock.Any()).Return(false).Times(20)
	phys.EXPECT().Trace(gomock.Any()).Return(weapon.TraceResult{Hit: true, EndPos: end}).Times(20)
	fx.EXPECT().Impact(gomock.Any()).Times(20)

	tracers := 0
	fx.EXPECT().PlayTracer("tracer", weapon.TargetViewModel, "muzzle", end).
		Do(func(string, weapon.EffectTarget, string, mgl64.Vec3) { tracers++ }).
		AnyTimes()

	for i := 0; i < 20; i++ {
		c.ShootClientBullet(w, mgl64.Vec3{}, end, 2)
	}

	if tracers == 0 || tracers == 20 {
		t.Errorf("expected roughly half the bullets to draw a tracer, got %d of 20", tracers)
	}
}

func TestControllerWithoutServices(t *testing.T) {
	c := weapon.NewController(weapon.Dependencies{Realm: weapon.RealmListen})
	w := weapon.New(rifle())
	w.Equip(newOwner("p"))

	c.Attack(w, &w.Profile.Primary, true)
	c.ShootBullet(w, 0.5, 1, 1, 2)
	c.Reload(w)
	c.Scheduler().Advance(10)
}
