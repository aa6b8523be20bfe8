package app

// suspend hands the terminal back to the shell and stops the process until
// it is continued. The screen is restored and fully repainted afterwards.
func (r *Runner) suspend() error {
	if r.Screen == nil {
		return nil
	}
	if err := r.Screen.Suspend(); err != nil {
		return err
	}
	r.Logger.Event("suspend", nil)
	stopErr := r.stopSelf()
	if err := r.Screen.Resume(); err != nil {
		return err
	}
	r.Logger.Event("resume", nil)
	r.resize()
	return stopErr
}
