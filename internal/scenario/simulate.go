package scenario

// Run drives the fixed-step tau-leap simulator from startDate to endDate
// (§4.1). Each iteration: the observer registers theta events and performs
// movements/slaughter (step 1), the kernel is rebuilt from the resulting
// state (step 2), then Poisson(rate*stepSize) occurrences of each kernel
// entry are sampled and applied (step 3). The continue criterion — current
// time <= endDate, kernel non-empty, infected count <= maxOutbreakSize — is
// evaluated against the kernel left over from the previous iteration (or the
// initial state before any step has run), exactly as the reference
// implementation checks it against a kernel built at initialisation.
func (c *Context) Run() error {
	currentTime := c.Config.StartDate
	kernel := c.BuildKernel()

	for currentTime <= c.Config.EndDate && !kernel.Empty() && c.TotalInfectedCows() <= c.Config.MaxOutbreakSize {
		c.Step(currentTime)
		kernel = c.BuildKernel()

		for _, entry := range kernel.Entries() {
			occurrences := c.RNG.Poisson(entry.Rate * float64(c.Config.StepSize))
			for i := 0; i < occurrences; i++ {
				if err := c.ApplyEvent(entry.Event); err != nil {
					return err
				}
			}
		}
		currentTime += c.Config.StepSize
	}
	return nil
}
