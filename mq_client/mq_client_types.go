package mq_client

type Exchange struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Queue struct {
	Name    string `yaml:"name"`
	Durable bool   `yaml:"durable"`
}

type Binding struct {
	Queue      string `yaml:"queue"`
	CleanStart bool   `yaml:"clean_start"`
	Exchange   string `yaml:"exchange"`
}

type Channel struct {
	Prefetch int `yaml:"prefetch"`
}

type MQClientConfig struct {
	Exchange struct {
		Trade  Exchange `yaml:"trade"`
		Events Exchange `yaml:"events"`
		Book   Exchange `yaml:"book"`
	}
	Queue struct {
		BookOperations  Queue `yaml:"book_operations"`
		NewTrade        Queue `yaml:"new_trade"`
		DepthCache      Queue `yaml:"depth_cache"`
		TradeError      Queue `yaml:"trade_error"`
		EventsProcessor Queue `yaml:"events_processor"`
	}
	Binding struct {
		BookOperations  Binding `yaml:"book_operations"`
		TradeExecutor   Binding `yaml:"trade_executor"`
		DepthCache      Binding `yaml:"depth_cache"`
		TradeError      Binding `yaml:"trade_error"`
		EventsProcessor Binding `yaml:"events_processor"`
	}
	Channel struct {
		BookOperations Channel `yaml:"book_operations"`
		TradeExecutor  Channel `yaml:"trade_executor"`
		DepthCache     Channel `yaml:"depth_cache"`
	}
}
