package validate

import (
	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/timeunit"
)

// paramIssues validates the essential attributes of n's operator parameters
// per spec §3's "Operator parameter schemas" table. It assumes n.Kind
// already required an op and n.Op was already confirmed valid.
func paramIssues(path string, n eir.Node) Issues {
	var issues Issues
	p := n.Params
	req := func(key string) (interface{}, bool) {
		v, ok := p[key]
		if !ok {
			issues = append(issues, errIssue(path+".params."+key, "required for op %q", n.Op))
		}
		return v, ok
	}
	reqTime := func(key string) {
		v, ok := req(key)
		if !ok {
			return
		}
		s, ok := v.(string)
		if !ok {
			issues = append(issues, errIssue(path+".params."+key, "must be a time literal string"))
			return
		}
		if _, err := timeunit.ParseNanos(s); err != nil {
			issues = append(issues, errIssue(path+".params."+key, "invalid time literal: %v", err))
		}
	}
	reqPositiveReal := func(key string) {
		v, ok := req(key)
		if !ok {
			return
		}
		f, ok := asFloat(v)
		if !ok || f <= 0 {
			issues = append(issues, errIssue(path+".params."+key, "must be a real number > 0"))
		}
	}
	reqNonNegativeReal := func(key string) {
		v, ok := req(key)
		if !ok {
			return
		}
		f, ok := asFloat(v)
		if !ok || f < 0 {
			issues = append(issues, errIssue(path+".params."+key, "must be a real number >= 0"))
		}
	}
	reqReal := func(key string) {
		v, ok := req(key)
		if !ok {
			return
		}
		if _, ok := asFloat(v); !ok {
			issues = append(issues, errIssue(path+".params."+key, "must be a real number"))
		}
	}
	reqPositiveInt := func(key string) {
		v, ok := req(key)
		if !ok {
			return
		}
		f, ok := asFloat(v)
		if !ok || f < 1 || f != float64(int64(f)) {
			issues = append(issues, errIssue(path+".params."+key, "must be an integer >= 1"))
		}
	}
	reqInt := func(key string) {
		v, ok := req(key)
		if !ok {
			return
		}
		f, ok := asFloat(v)
		if !ok || f != float64(int64(f)) {
			issues = append(issues, errIssue(path+".params."+key, "must be an integer"))
		}
	}

	switch n.Op {
	case eir.OpLIF:
		reqTime("tau_m")
		reqPositiveReal("v_th")
		reqReal("v_reset")
		reqReal("r_m")
		reqNonNegativeTime(path, p, "refractory", &issues)
	case eir.OpExpSyn:
		reqTime("tau_s")
		reqReal("weight")
	case eir.OpDelay:
		reqNonNegativeTime(path, p, "delay", &issues)
	case eir.OpFuse:
		reqTime("window")
		reqPositiveInt("min_count")
	case eir.OpSTFT:
		if v, ok := req("n_fft"); ok {
			if f, ok := asFloat(v); !ok || f < 2 {
				issues = append(issues, errIssue(path+".params.n_fft", "must be >= 2"))
			}
		}
		reqTime("hop")
		reqPositiveReal("sample_rate_hz")
		if v, ok := p["window"]; ok {
			if s, ok := v.(string); !ok || (s != "hann" && s != "rect") {
				issues = append(issues, errIssue(path+".params.window", "must be one of hann, rect"))
			}
		}
	case eir.OpMel:
		if v, ok := req("n_fft"); ok {
			if f, ok := asFloat(v); !ok || f < 2 {
				issues = append(issues, errIssue(path+".params.n_fft", "must be >= 2"))
			}
		}
		reqPositiveInt("n_mels")
		reqPositiveReal("sample_rate_hz")
	case eir.OpXYToCh:
		reqPositiveInt("width")
		reqPositiveInt("height")
	case eir.OpShiftXY:
		reqInt("dx")
		reqInt("dy")
		reqPositiveInt("width")
		reqPositiveInt("height")
	}

	return issues
}

func reqNonNegativeTime(path string, p map[string]interface{}, key string, issues *Issues) {
	v, ok := p[key]
	if !ok {
		*issues = append(*issues, errIssue(path+".params."+key, "required"))
		return
	}
	s, ok := v.(string)
	if !ok {
		*issues = append(*issues, errIssue(path+".params."+key, "must be a time literal string"))
		return
	}
	ns, err := timeunit.ParseNanos(s)
	if err != nil {
		*issues = append(*issues, errIssue(path+".params."+key, "invalid time literal: %v", err))
		return
	}
	if ns < 0 {
		*issues = append(*issues, errIssue(path+".params."+key, "must be >= 0"))
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
