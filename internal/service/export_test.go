package service

// HeldLocks reports how many per-plan edit locks are live.
func HeldLocks(s *PlanService) int {
	return s.heldLocks()
}
