package viewmodel

// aim moves the weapon to the sight picture and drives the FOV targets.
func (a *Animator) aim(in *FrameInput) {
	s := &a.state
	p := &a.profile

	if !in.Aiming {
		s.AimStart = 0
		s.AimLatched = false
		s.TargetWeaponFOV = p.FOV
		if s.FinalPlayerFOV != p.AimPlayerFOV {
			s.PlayerFOVSpeed = p.AimOutFOVSpeed
		}
		return
	}

	if !s.AimLatched {
		s.AimStart = in.Now
		s.AimLatched = true
	}

	s.AnimSpeed = baseAnimSpeed * p.AnimSpeed
	s.TargetPos = s.TargetPos.Add(p.Aim.Pos)
	s.TargetRot = s.TargetRot.Add(p.Aim.Angle.Vec())

	if p.AimPlayerFOV > 0 {
		s.TargetPlayerFOV = p.AimPlayerFOV
	}
	if p.AimFOV > 0 {
		s.TargetWeaponFOV = p.AimFOV
	}
	s.PlayerFOVSpeed = p.AimInFOVSpeed
}

// sprint adds the configured run pose.
func (a *Animator) sprint(in *FrameInput) {
	run := a.profile.Run
	if !in.Running || run.IsZero() {
		return
	}
	s := &a.state
	s.TargetPos = s.TargetPos.Add(run.Pos)
	s.TargetRot = s.TargetRot.Add(run.Angle.Vec())
}
