package walk

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/net/html"
)

// ErrEmptyTree is thrown if a Walker is called with an empty tree. Refer to
// the documentation of NewWalker() for details about this scenario.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrInvalidFilter is thrown if a filter step of a walker is defunct, e.g.
// a nil predicate or action.
var ErrInvalidFilter = errors.New("filter stage is invalid")

// ErrNoMoreFiltersAccepted is thrown if a client already called Promise(), but
// tried to re-use a walker with another filter.
var ErrNoMoreFiltersAccepted = errors.New("in promise mode; will not accept new filters; use a new walker")

// Minimum and maximum number of concurrent workers performing actions on
// selected nodes.
const (
	minWorkerCount int = 3
	maxWorkerCount int = 10
)

// Predicate is a function type to match against nodes of a document tree.
// It is used as an argument for Walker.Prune and Walker.Select.
// Predicates are called from the traversal goroutine and should be cheap
// and free of side effects on the tree.
type Predicate func(n *html.Node) bool

// Action is a function type to operate on selected nodes. Actions for
// distinct nodes run concurrently. An action returning an error does not
// stop the walk; the error is recorded and reported by the promise, and
// the node is excluded from the resulting selection.
type Action func(n *html.Node) error

// Walker holds information for operating on document trees: finding nodes
// and doing work on them. Clients create a Walker for a (sub-)tree, chain
// filter configuration calls, and finally request a Promise.
//
// A typical usage looks like this:
//
//    w := walk.NewWalker(body)
//    future := w.Prune(inert).Select(wanted).ForEach(work, 0).Promise()
//    nodes, err := future()
//
// ATTENTION: Clients must call Promise() as the final link of the chain,
// even if they do not expect the walk to return a non-empty selection.
// Firstly, they need to check for errors, and secondly the walk does not
// start before the promise exists.
type Walker struct {
	*sync.Mutex
	initial   *html.Node // initial node of (sub-)tree
	prune     Predicate  // subtrees to exclude from the walk
	selection Predicate  // nodes to select; nil selects every node
	limit     int        // maximum number of selections, 0 = unlimited
	action    Action     // work to perform on selected nodes
	workers   int        // number of concurrent workers for actions
	cfgerr    error      // a defunct filter configuration, reported by the promise
	future    func() ([]*html.Node, error)
	promising bool // client has called Promise()
}

// NewWalker creates a Walker for the initial node of a (sub-)tree.
//
// If initial is nil, NewWalker will return a nil-Walker, resulting in a
// NOP-walk returning an empty selection and an error (ErrEmptyTree).
func NewWalker(initial *html.Node) *Walker {
	if initial == nil {
		return nil
	}
	tracer().Debugf("new document walker, initial node = %v", initial.Data)
	w := &Walker{initial: initial}
	w.Mutex = new(sync.Mutex)
	return w
}

// Prune excludes subtrees from the walk. A node matching the predicate is
// not visited, not selected, and none of its descendents are.
//
// If w is nil, Prune will return nil.
func (w *Walker) Prune(p Predicate) *Walker {
	if w == nil {
		return nil
	}
	w.Lock()
	defer w.Unlock()
	w.checkNotPromising()
	if p == nil {
		w.configError(ErrInvalidFilter)
		return w
	}
	w.prune = p
	return w
}

// Select decides which of the visited nodes become part of the selection.
// Selected nodes are handed to the action (see ForEach) and returned by
// the promise, in document order. A walker without a Select call selects
// every visited node.
//
// If w is nil, Select will return nil.
func (w *Walker) Select(p Predicate) *Walker {
	if w == nil {
		return nil
	}
	w.Lock()
	defer w.Unlock()
	w.checkNotPromising()
	if p == nil {
		w.configError(ErrInvalidFilter)
		return w
	}
	w.selection = p
	return w
}

// Limit stops the walk after max nodes have been selected. Nodes are
// counted in document order at selection time, not at action completion.
// A limit of 0 means no limit.
//
// If w is nil, Limit will return nil.
func (w *Walker) Limit(max int) *Walker {
	if w == nil {
		return nil
	}
	w.Lock()
	defer w.Unlock()
	w.checkNotPromising()
	w.limit = max
	return w
}

// ForEach calls a client-provided action on each selected node. Actions
// run on a pool of concurrent workers; workers picks the pool size, with
// 0 meaning a platform-dependent default.
//
// If w is nil, ForEach will return nil.
func (w *Walker) ForEach(a Action, workers int) *Walker {
	if w == nil {
		return nil
	}
	w.Lock()
	defer w.Unlock()
	w.checkNotPromising()
	if a == nil {
		w.configError(ErrInvalidFilter)
		return w
	}
	w.action = a
	w.workers = workers
	return w
}

// configError records the first defunct configuration call. The error is
// reported when the promise is called.
func (w *Walker) configError(err error) {
	tracer().Errorf(err.Error())
	if w.cfgerr == nil {
		w.cfgerr = err
	}
}

// checkNotPromising guards filter configuration against a walker whose
// promise already exists. Such a call cannot have any effect on the
// running walk, so it is flagged loudly.
func (w *Walker) checkNotPromising() {
	if w.promising {
		tracer().Errorf(ErrNoMoreFiltersAccepted.Error())
		panic(ErrNoMoreFiltersAccepted) // loud, as long as this is unstable
	}
}

// Promise is a future synchronisation point. Calling Promise starts the
// walk. Clients will not receive the resulting node list immediately, but
// rather get handed a Promise. Clients will then—any time after they
// received the Promise—call it to receive the selection and a possible
// error value. Calling the Promise will block until the traversal and all
// concurrent actions have finished, i.e. it is a synchronization point.
//
// The selection is returned in document order. Repeated calls to
// Promise() return the same future; the walk runs once.
func (w *Walker) Promise() func() ([]*html.Node, error) {
	if w == nil {
		// empty Walker => return nil set and an error
		return func() ([]*html.Node, error) {
			return nil, ErrEmptyTree
		}
	}
	w.Lock()
	defer w.Unlock()
	w.promising = true // will block calls to establish new filters
	if w.future != nil {
		return w.future
	}
	if w.cfgerr != nil {
		err := w.cfgerr
		w.future = func() ([]*html.Node, error) {
			return nil, err
		}
		return w.future
	}
	w.future = w.start()
	return w.future
}

// --- Walk execution --------------------------------------------------------

// workItem is the unit transported through the walker's channels.
// The serial number reflects document order of selection and is used to
// order the resulting node set.
type workItem struct {
	node   *html.Node
	serial uint32
}

// start spins up the traversal goroutine, the worker pool, a watchdog and
// two collectors, and returns the future for the overall result.
//
// The watchdog closes the results and error channels as soon as all
// workers have terminated, which in turn lets the collectors terminate.
func (w *Walker) start() func() ([]*html.Node, error) {
	workload := make(chan workItem, 10)
	results := make(chan workItem, 3)
	errch := make(chan error, 20)
	//
	go w.traverse(workload) // feeds the workload channel, closes it when done
	//
	var wwg sync.WaitGroup // counts active workers
	n := workerCount(w.workers)
	wwg.Add(n)
	for i := 0; i < n; i++ {
		wno := i + 1
		go worker(wno, w.action, workload, results, errch, &wwg)
	}
	go func() { // watchdog: all workers done => no more results, no more errors
		wwg.Wait()
		close(results)
		close(errch)
	}()
	//
	var selection []*html.Node
	var lasterror error
	resdone := make(chan struct{})
	errdone := make(chan struct{})
	go func() { // collect results and establish document order
		defer close(resdone)
		selection = collect(results)
	}()
	go func() { // collect errors; throw away all errors but the last one
		defer close(errdone)
		for err := range errch {
			if err != nil {
				lasterror = err
			}
		}
	}()
	return func() ([]*html.Node, error) {
		<-resdone
		<-errdone
		return selection, lasterror
	}
}

// traverse visits the subtree of the walker's initial node in depth-first
// pre-order and pushes every selected node onto the workload channel.
// Pruned subtrees are neither visited nor selected. Traversal stops
// entirely once the selection limit is reached.
func (w *Walker) traverse(workload chan<- workItem) {
	defer close(workload)
	var serial uint32
	var visit func(*html.Node) bool
	visit = func(n *html.Node) bool {
		if w.prune != nil && w.prune(n) {
			tracer().Debugf("walker prunes subtree at %v", n.Data)
			return true // skip subtree, continue the walk
		}
		if w.selection == nil || w.selection(n) {
			serial++
			workload <- workItem{node: n, serial: serial}
			if w.limit > 0 && int(serial) >= w.limit {
				tracer().Debugf("walker reached selection limit of %d", w.limit)
				return false // stop the walk altogether
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(w.initial)
	tracer().Debugf("document walk done, %d nodes selected", serial)
}

// worker performs the walker's action on incoming nodes until the workload
// channel is drained. Nodes are forwarded to the results channel unless
// the action failed for them.
func worker(wno int, action Action, workload <-chan workItem, results chan<- workItem,
	errch chan<- error, wwg *sync.WaitGroup) {
	//
	defer wwg.Done()
	for item := range workload {
		if action != nil {
			if err := action(item.node); err != nil {
				tracer().Debugf("walker worker #%d: action failed for node %d: %v", wno, item.serial, err)
				errch <- err // signal error to caller
				continue
			}
		}
		results <- item
	}
}

// collect drains the results channel and returns the nodes ordered by
// their serial numbers, i.e. in document order.
func collect(results <-chan workItem) []*html.Node {
	var rs resultSlices
	for item := range results {
		rs.nodes = append(rs.nodes, item.node)
		rs.serials = append(rs.serials, item.serial)
	}
	sort.Sort(rs)
	return rs.nodes
}

// workerCount clamps a client-provided worker pool size, substituting a
// platform-dependent default for 0.
func workerCount(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > maxWorkerCount {
		n = maxWorkerCount
	} else if n < minWorkerCount {
		n = minWorkerCount
	}
	return n
}

// --- Helpers ---------------------------------------------------------------

// a helper struct for ordering the resulting nodes and their serials
type resultSlices struct {
	nodes   []*html.Node
	serials []uint32
}

func (rs resultSlices) Len() int           { return len(rs.nodes) }
func (rs resultSlices) Less(i, j int) bool { return rs.serials[i] < rs.serials[j] }
func (rs resultSlices) Swap(i, j int) {
	rs.nodes[i], rs.nodes[j] = rs.nodes[j], rs.nodes[i]
	rs.serials[i], rs.serials[j] = rs.serials[j], rs.serials[i]
}
